package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"trackdeck/internal/models/db_models"
)

func taskIn(status db_models.TaskStatus, phase *db_models.ProductionPhase) db_models.Task {
	return db_models.Task{Status: status, Category: phase}
}

func phasePtr(p db_models.ProductionPhase) *db_models.ProductionPhase {
	return &p
}

func TestOverallProgress(t *testing.T) {
	assert.Equal(t, float64(0), OverallProgress(nil))

	tasks := []db_models.Task{
		taskIn(db_models.TaskCompleted, nil),
		taskIn(db_models.TaskPending, nil),
		taskIn(db_models.TaskInProgress, nil),
		taskIn(db_models.TaskPending, nil),
	}
	assert.Equal(t, float64(25), OverallProgress(tasks))
}

func TestPhaseProgress(t *testing.T) {
	tasks := []db_models.Task{
		taskIn(db_models.TaskCompleted, phasePtr(db_models.PhaseMixing)),
		taskIn(db_models.TaskPending, phasePtr(db_models.PhaseMixing)),
		taskIn(db_models.TaskCompleted, phasePtr(db_models.PhaseRecording)),
		// "other" and uncategorized tasks count toward overall only
		taskIn(db_models.TaskCompleted, phasePtr(db_models.PhaseOther)),
		taskIn(db_models.TaskPending, nil),
	}

	progress := PhaseProgress(tasks)

	assert.Len(t, progress, len(ProductionPhases))
	assert.Equal(t, float64(50), progress[db_models.PhaseMixing])
	assert.Equal(t, float64(100), progress[db_models.PhaseRecording])
	assert.Equal(t, float64(0), progress[db_models.PhaseMastering])
	assert.Equal(t, float64(0), progress[db_models.PhasePreProduction])
	assert.NotContains(t, progress, db_models.PhaseOther)
}
