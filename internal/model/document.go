package model

import "time"

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Grade       string    `json:"grade"`
	DocType     string    `json:"doc_type"`
	LinkType    string    `json:"link_type"`
	CreatedAt   time.Time `json:"created_at"`
}
