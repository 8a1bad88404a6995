package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		due    *time.Time
		name   string
		status Status
		want   bool
	}{
		{name: "past due and todo", due: &past, status: StatusTodo, want: true},
		{name: "past due but done", due: &past, status: StatusDone, want: false},
		{name: "future due", due: &future, status: StatusTodo, want: false},
		{name: "no due date", due: nil, status: StatusTodo, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{DueDate: tt.due, Status: tt.status}
			assert.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}

func TestTask_IsDueToday(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	sameDay := time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, (&Task{DueDate: &sameDay}).IsDueToday(now))
	assert.False(t, (&Task{DueDate: &nextDay}).IsDueToday(now))
	assert.False(t, (&Task{}).IsDueToday(now))
}

func TestTaskDraft_Validate(t *testing.T) {
	valid := TaskDraft{Title: "Write tests", Priority: PriorityMedium}
	assert.NoError(t, valid.Validate())

	noTitle := TaskDraft{Priority: PriorityMedium}
	assert.ErrorIs(t, noTitle.Validate(), ErrEmptyTitle)

	badPriority := TaskDraft{Title: "x", Priority: Priority("EXTREME")}
	assert.ErrorIs(t, badPriority.Validate(), ErrInvalidPriority)

	badStatus := TaskDraft{Title: "x", Priority: PriorityLow, Status: Status("LATER")}
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidStatus)
}

func TestTaskPatch_Validate(t *testing.T) {
	empty := TaskPatch{}
	assert.ErrorIs(t, empty.Validate(), ErrNoFieldsToUpdate)

	title := "New title"
	valid := TaskPatch{Title: &title}
	assert.NoError(t, valid.Validate())

	blank := ""
	blankTitle := TaskPatch{Title: &blank}
	assert.ErrorIs(t, blankTitle.Validate(), ErrEmptyTitle)
}

func TestStatus_RankAndValidity(t *testing.T) {
	assert.True(t, StatusTodo.Rank() < StatusInProgress.Rank())
	assert.True(t, StatusInProgress.Rank() < StatusDone.Rank())
	assert.False(t, Status("LATER").IsValid())

	_, err := ParseStatus("TODO")
	assert.NoError(t, err)
	_, err = ParseStatus("later")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestPriority_RankAndValidity(t *testing.T) {
	assert.True(t, PriorityLow.Rank() < PriorityMedium.Rank())
	assert.True(t, PriorityHigh.Rank() < PriorityUrgent.Rank())

	_, err := ParsePriority("URGENT")
	assert.NoError(t, err)
	_, err = ParsePriority("EXTREME")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestUser_Helpers(t *testing.T) {
	user := User{FirstName: "Jane", LastName: "Smith", Role: RoleAdmin, Status: UserActive}

	assert.Equal(t, "Jane Smith", user.FullName())
	assert.Equal(t, "JS", user.Initials())
	assert.True(t, user.IsAdmin())
	assert.True(t, user.IsActive())
	assert.False(t, user.HasRole(RoleManager))
}

func TestSession_IsAuthenticated(t *testing.T) {
	user := &User{ID: "1"}

	assert.True(t, (&Session{User: user, Token: "tok"}).IsAuthenticated())
	assert.False(t, (&Session{Token: "tok"}).IsAuthenticated())
	assert.False(t, (&Session{User: user}).IsAuthenticated())

	var nilSession *Session
	assert.False(t, nilSession.IsAuthenticated())
}
