package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskStatus
		wantErr bool
	}{
		{in: "pending", want: StatusPending},
		{in: "in_progress", want: StatusInProgress},
		{in: "in-progress", want: StatusInProgress},
		{in: " Completed ", want: StatusCompleted},
		{in: "done", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStatus(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	for _, p := range Priorities() {
		got, err := ParsePriority(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePriority("urgent")
	assert.Error(t, err)
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 3, PriorityHigh.Rank())
}

func TestStatusNext(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusPending.Next())
	assert.Equal(t, StatusCompleted, StatusInProgress.Next())
	assert.Equal(t, StatusPending, StatusCompleted.Next())
}

func TestTask_JSON(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-0000beef",
		Title:     "Write report",
		DueDate:   "2024-03-05",
		Priority:  PriorityHigh,
		Status:    StatusInProgress,
		CreatedAt: created,
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"priority":"high"`)
	assert.Contains(t, string(data), `"status":"in_progress"`)
	assert.NotContains(t, string(data), `"description"`)

	var decoded Task
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, task, decoded)
}

func TestTask_JSONRejectsUnknownEnums(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"title":"x","priority":"urgent"}`), &task)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"title":"x","status":"blocked"}`), &task)
	assert.Error(t, err)
}

func TestInvalidEnumsDoNotMarshal(t *testing.T) {
	_, err := json.Marshal(Task{Priority: TaskPriority(7)})
	assert.Error(t, err)
	_, err = json.Marshal(Task{Status: TaskStatus(9)})
	assert.Error(t, err)
}

func TestTask_Due(t *testing.T) {
	d, ok := Task{DueDate: "2024-06-01"}.Due()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)

	_, ok = Task{}.Due()
	assert.False(t, ok)

	_, ok = Task{DueDate: "next week"}.Due()
	assert.False(t, ok)
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()
	assert.Equal(t, PriorityMedium, d.Priority)
	assert.Equal(t, StatusPending, d.Status)
	assert.Empty(t, d.Title)
}

func TestTask_DraftRoundTrip(t *testing.T) {
	task := Task{ID: "task-1", Title: "a", Description: "b", DueDate: "2024-01-01", Priority: PriorityLow, Status: StatusCompleted}
	d := task.Draft()
	assert.Equal(t, Draft{Title: "a", Description: "b", DueDate: "2024-01-01", Priority: PriorityLow, Status: StatusCompleted}, d)
}
