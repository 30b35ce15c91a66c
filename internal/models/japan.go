// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JapanLanding is the single marketing document behind the Japan micro-site.
// Its sections are stored as opaque JSON and passed through unchanged.
type JapanLanding struct {
	ID        uuid.UUID       `json:"id"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// JapanProgram is one language/training programme for Japan placements.
type JapanProgram struct {
	ID               uuid.UUID       `json:"id"`
	ProgramType      string          `json:"program_type" validate:"required,max=100"`
	Subtitle         string          `json:"subtitle" validate:"max=200"`
	Slug             string          `json:"slug" validate:"max=320"`
	Overview         string          `json:"overview"`
	TrainingDuration string          `json:"training_duration" validate:"max=100"`
	TargetLevel      string          `json:"target_level" validate:"max=100"`
	Objective        string          `json:"objective"`
	ImageURL         string          `json:"image_url" validate:"omitempty,url"`
	Details          json.RawMessage `json:"details"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// SlugSource is the text a programme's slug is derived from.
func (p *JapanProgram) SlugSource() string {
	if p.Subtitle == "" {
		return p.ProgramType
	}
	return p.ProgramType + " " + p.Subtitle
}
