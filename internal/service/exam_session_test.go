package service

import (
	"testing"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionAt(now time.Time) *ExamSessionService {
	return &ExamSessionService{now: func() time.Time { return now }}
}

func testExam() *model.Exam {
	return &model.Exam{ID: "exam_10_abc123", TimeLimit: 15}
}

func TestBeginIssuesFreshMarker(t *testing.T) {
	now := time.Now()
	svc := sessionAt(now)
	claims := &util.SessionClaims{UserID: "1"}
	exam := testExam()

	state := svc.Begin(claims, exam, "10")
	assert.Equal(t, 15*60, state.RemainingSeconds)
	assert.False(t, state.Expired)

	start, ok := claims.ExamStart("10", exam.ID)
	require.True(t, ok)
	assert.Equal(t, now.Unix(), start.Unix())
}

func TestBeginResumesRunningAttempt(t *testing.T) {
	now := time.Now()
	claims := &util.SessionClaims{UserID: "1"}
	exam := testExam()
	claims.SetExamStart("10", exam.ID, now.Add(-5*time.Minute))

	state := sessionAt(now).Begin(claims, exam, "10")
	assert.False(t, state.Expired)
	assert.InDelta(t, 10*60, state.RemainingSeconds, 1)
}

func TestBeginExpiredClearsMarker(t *testing.T) {
	now := time.Now()
	claims := &util.SessionClaims{UserID: "1"}
	exam := testExam()
	claims.SetExamStart("10", exam.ID, now.Add(-16*time.Minute))

	state := sessionAt(now).Begin(claims, exam, "10")
	assert.True(t, state.Expired)

	_, ok := claims.ExamStart("10", exam.ID)
	assert.False(t, ok, "mốc hết hạn phải bị xóa")
}

func TestBeginCorruptMarkerReissues(t *testing.T) {
	now := time.Now()
	exam := testExam()

	t.Run("mốc trong tương lai", func(t *testing.T) {
		claims := &util.SessionClaims{UserID: "1"}
		claims.SetExamStart("10", exam.ID, now.Add(time.Hour))

		state := sessionAt(now).Begin(claims, exam, "10")
		assert.True(t, state.Restarted)
		assert.Equal(t, 15*60, state.RemainingSeconds)
	})

	t.Run("mốc quá xa trong quá khứ", func(t *testing.T) {
		claims := &util.SessionClaims{UserID: "1"}
		claims.SetExamStart("10", exam.ID, now.Add(-31*time.Minute))

		state := sessionAt(now).Begin(claims, exam, "10")
		assert.True(t, state.Restarted)
		assert.Equal(t, 15*60, state.RemainingSeconds)
	})
}

func TestRemainingRequiresMarker(t *testing.T) {
	claims := &util.SessionClaims{UserID: "1"}
	_, err := sessionAt(time.Now()).Remaining(claims, testExam(), "10")
	assert.ErrorIs(t, err, util.ErrNoExamSession)
}

func TestRemainingNeverZeroWhileRunning(t *testing.T) {
	now := time.Now()
	claims := &util.SessionClaims{UserID: "1"}
	exam := testExam()
	claims.SetExamStart("10", exam.ID, now.Add(-15*time.Minute+2*time.Second))

	state, err := sessionAt(now).Remaining(claims, exam, "10")
	require.NoError(t, err)
	assert.False(t, state.Expired)
	assert.GreaterOrEqual(t, state.RemainingSeconds, 1)
}

func TestResetReissuesUnconditionally(t *testing.T) {
	now := time.Now()
	claims := &util.SessionClaims{UserID: "1"}
	exam := testExam()
	claims.SetExamStart("10", exam.ID, now.Add(-20*time.Minute))

	state := sessionAt(now).Reset(claims, exam, "10")
	assert.Equal(t, 15*60, state.RemainingSeconds)

	start, ok := claims.ExamStart("10", exam.ID)
	require.True(t, ok)
	assert.Equal(t, now.Unix(), start.Unix())
}

func TestValidateSubmission(t *testing.T) {
	now := time.Now()
	exam := testExam()

	t.Run("trong giờ", func(t *testing.T) {
		claims := &util.SessionClaims{UserID: "1"}
		claims.SetExamStart("10", exam.ID, now.Add(-10*time.Minute))

		spent, err := sessionAt(now).ValidateSubmission(claims, exam, "10")
		require.NoError(t, err)
		assert.InDelta(t, 600, spent, 1)

		_, ok := claims.ExamStart("10", exam.ID)
		assert.False(t, ok, "mốc phải bị xóa sau khi nộp")
	})

	t.Run("nộp muộn", func(t *testing.T) {
		claims := &util.SessionClaims{UserID: "1"}
		claims.SetExamStart("10", exam.ID, now.Add(-16*time.Minute))

		_, err := sessionAt(now).ValidateSubmission(claims, exam, "10")
		assert.ErrorIs(t, err, util.ErrExamTimeExpired)

		_, ok := claims.ExamStart("10", exam.ID)
		assert.False(t, ok)
	})

	t.Run("nộp lại bị từ chối", func(t *testing.T) {
		claims := &util.SessionClaims{UserID: "1"}
		claims.SetExamStart("10", exam.ID, now.Add(-time.Minute))
		svc := sessionAt(now)

		_, err := svc.ValidateSubmission(claims, exam, "10")
		require.NoError(t, err)

		_, err = svc.ValidateSubmission(claims, exam, "10")
		assert.ErrorIs(t, err, util.ErrNoExamSession)
	})

	t.Run("chưa bắt đầu", func(t *testing.T) {
		claims := &util.SessionClaims{UserID: "1"}
		_, err := sessionAt(now).ValidateSubmission(claims, exam, "10")
		assert.ErrorIs(t, err, util.ErrNoExamSession)
	})
}
