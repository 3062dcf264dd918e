package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merchmaroc/merchandising-api/internal/domain/entity"
)

func tasks(statuses ...string) []entity.TaskItem {
	out := make([]entity.TaskItem, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, entity.TaskItem{Status: s})
	}
	return out
}

func TestRecalculateStatus(t *testing.T) {
	cases := []struct {
		name     string
		status   string
		tasks    []entity.TaskItem
		expected string
	}{
		{"sin tareas vuelve a PLANNED", entity.AssignmentDone, nil, entity.AssignmentPlanned},
		{"todas TODO queda PLANNED", entity.AssignmentPlanned, tasks(entity.TaskTodo, entity.TaskTodo), entity.AssignmentPlanned},
		{"alguna DONE pasa a IN_PROGRESS", entity.AssignmentPlanned, tasks(entity.TaskDone, entity.TaskTodo), entity.AssignmentInProgress},
		{"alguna IN_PROGRESS pasa a IN_PROGRESS", entity.AssignmentPlanned, tasks(entity.TaskInProgress, entity.TaskTodo), entity.AssignmentInProgress},
		{"todas DONE pasa a DONE", entity.AssignmentInProgress, tasks(entity.TaskDone, entity.TaskDone), entity.AssignmentDone},
		{"CANCELLED se conserva", entity.AssignmentCancelled, tasks(entity.TaskDone), entity.AssignmentCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &entity.Assignment{Status: tc.status, Tasks: tc.tasks}
			a.RecalculateStatus()
			assert.Equal(t, tc.expected, a.Status)
		})
	}
}

func TestCompletedTasks(t *testing.T) {
	a := &entity.Assignment{Tasks: tasks(entity.TaskDone, entity.TaskTodo, entity.TaskDone)}
	assert.Equal(t, 2, a.CompletedTasks())

	empty := &entity.Assignment{}
	assert.Equal(t, 0, empty.CompletedTasks())
}
