package util

import (
	"testing"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "bi-mat-chi-dung-trong-test-0123456789"

func TestSessionSignAndParse(t *testing.T) {
	claims := &SessionClaims{
		UserID:   "1",
		Username: "hocsinh",
		Role:     model.Student,
	}
	claims.SetExamStart("10", "exam_10_abc", time.Now())

	token, err := SignSession(claims, testSecret, 2*time.Hour)
	require.NoError(t, err)

	parsed, err := ParseSession(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "1", parsed.UserID)
	assert.Equal(t, model.Student, parsed.Role)

	_, ok := parsed.ExamStart("10", "exam_10_abc")
	assert.True(t, ok, "mốc làm bài phải đi theo cookie")
	_, ok = parsed.ExamStart("11", "exam_10_abc")
	assert.False(t, ok)
}

func TestSessionRejectsTampering(t *testing.T) {
	claims := &SessionClaims{UserID: "1", Username: "hocsinh", Role: model.Student}
	token, err := SignSession(claims, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseSession(token, "secret-khac-0123456789-0123456789")
	assert.Error(t, err, "chữ ký sai phải bị từ chối")

	_, err = ParseSession(token+"x", testSecret)
	assert.Error(t, err, "token bị sửa phải bị từ chối")
}

func TestSessionExpires(t *testing.T) {
	claims := &SessionClaims{UserID: "1"}
	token, err := SignSession(claims, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseSession(token, testSecret)
	assert.Error(t, err, "phiên quá hạn phải bị từ chối")
}

func TestExamStartClear(t *testing.T) {
	claims := &SessionClaims{}
	claims.SetExamStart("12", "exam_12_x", time.Unix(1700000000, 0))

	start, ok := claims.ExamStart("12", "exam_12_x")
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), start.Unix())

	claims.ClearExamStart("12", "exam_12_x")
	_, ok = claims.ExamStart("12", "exam_12_x")
	assert.False(t, ok)
}

func TestNormalizeAnswerToken(t *testing.T) {
	cases := map[string]string{
		"A":        "A",
		"a":        "A",
		" b ":      "B",
		"C. Ba":    "C",
		"d. Bốn. ": "D",
		"":         "",
		"  ":       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeAnswerToken(in), "đầu vào %q", in)
	}
}

func TestFormatAnswerKey(t *testing.T) {
	assert.Equal(t, "A, C", FormatAnswerKey(model.AnswerKey{"A", "C"}))
	assert.Equal(t, "B", FormatAnswerKey(model.AnswerKey{"B"}))
	assert.Equal(t, "", FormatAnswerKey(nil))
}
