package db_models

import (
	"github.com/google/uuid"
)

const (
	TempoMin = 40
	TempoMax = 300
)

// SampleRates holds the accepted sample rates in Hz.
var SampleRates = []int{44100, 48000, 88200, 96000}

// MusicalKeys lists the 24 accepted key signatures.
var MusicalKeys = []string{
	"C major", "C minor",
	"Db major", "C# minor",
	"D major", "D minor",
	"Eb major", "Eb minor",
	"E major", "E minor",
	"F major", "F minor",
	"F# major", "F# minor",
	"G major", "G minor",
	"Ab major", "G# minor",
	"A major", "A minor",
	"Bb major", "Bb minor",
	"B major", "B minor",
}

type Project struct {
	BaseModel
	ProducerID uuid.UUID `gorm:"index"`
	Title      string
	Artist     string
	Tempo      int    // BPM
	SampleRate int    // Hz
	Key        string `gorm:"size:16"`
	DueDate    *int64

	CollectionID *uuid.UUID `gorm:"index"`

	Producer Account         `gorm:"foreignKey:ProducerID"`
	Tasks    []Task          `gorm:"foreignKey:ProjectID"`
	Members  []ProjectMember `gorm:"foreignKey:ProjectID"`
	Files    []FileUpload    `gorm:"foreignKey:ProjectID"`
}
