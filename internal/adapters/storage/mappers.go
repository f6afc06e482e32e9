package storage

import (
	"github.com/timeboxd/timeboxd/internal/domain"
)

// timeboxModelToDomain converts a TimeboxModel (GORM) to domain.Timebox
func timeboxModelToDomain(m TimeboxModel, sessions []SessionModel) domain.Timebox {
	ledger := make(domain.Ledger, 0, len(sessions))
	for _, s := range sessions {
		ledger = append(ledger, sessionModelToDomain(s))
	}

	return domain.Timebox{
		AfterTimeStoppedAt: m.AfterTimeStoppedAt,
		ArchivedAt:         m.ArchivedAt,
		AutoStoppedAt:      m.AutoStoppedAt,
		CanceledAt:         m.CanceledAt,
		CompletedAt:        m.CompletedAt,
		CreatedAt:          m.CreatedAt,
		DisplayOrder:       m.DisplayOrder,
		ExternalRef:        m.ExternalRef,
		FinishedAt:         m.FinishedAt,
		ID:                 m.ID,
		IntendedDuration:   m.IntendedDuration,
		Intention:          m.Intention,
		Notes:              m.Notes,
		PausedAt:           m.PausedAt,
		Sessions:           ledger,
		StartedAt:          m.StartedAt,
		Status:             domain.TimeboxStatus(m.Status),
		UpdatedAt:          m.UpdatedAt,
	}
}

// sessionModelToDomain converts a SessionModel (GORM) to domain.Session
func sessionModelToDomain(m SessionModel) domain.Session {
	var reason *domain.EndReason
	if m.EndReason != nil {
		r := domain.EndReason(*m.EndReason)
		reason = &r
	}

	return domain.Session{
		CancelledAt: m.CancelledAt,
		EndReason:   reason,
		ExpiredAt:   m.ExpiredAt,
		ID:          m.ID,
		StartedAt:   m.StartedAt,
		StoppedAt:   m.StoppedAt,
		TimeboxID:   m.TimeboxID,
	}
}

// changeModelToDomain converts a TimeboxChangeModel (GORM) to domain.TimeboxChange
func changeModelToDomain(m TimeboxChangeModel) domain.TimeboxChange {
	return domain.TimeboxChange{
		ID:                       m.ID,
		NewIntendedDuration:      m.NewIntendedDuration,
		PreviousIntendedDuration: m.PreviousIntendedDuration,
		PreviousIntention:        m.PreviousIntentionTitle,
		PreviousNotes:            m.PreviousNoteContent,
		TimeboxID:                m.TimeboxID,
		UpdatedAt:                m.UpdatedAt,
		UpdatedIntention:         m.UpdatedIntentionTitle,
		UpdatedNotes:             m.UpdatedNoteContent,
	}
}

// domainToChangeModel converts a domain.TimeboxChange to TimeboxChangeModel (GORM)
func domainToChangeModel(c domain.TimeboxChange) TimeboxChangeModel {
	return TimeboxChangeModel{
		NewIntendedDuration:      c.NewIntendedDuration,
		PreviousIntendedDuration: c.PreviousIntendedDuration,
		PreviousIntentionTitle:   c.PreviousIntention,
		PreviousNoteContent:      c.PreviousNotes,
		TimeboxID:                c.TimeboxID,
		UpdatedAt:                c.UpdatedAt.UTC(),
		UpdatedIntentionTitle:    c.UpdatedIntention,
		UpdatedNoteContent:       c.UpdatedNotes,
	}
}
