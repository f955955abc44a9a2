package mapping

import (
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelRateSnapshot splits a domain RateSnapshot into its header and entry rows
func ToModelRateSnapshot(d domain.RateSnapshot) (models.RateSnapshot, []models.RateSnapshotEntry) {
	header := models.RateSnapshot{
		SnapshotID:    d.SnapshotID,
		PivotCurrency: string(d.Pivot),
		Source:        string(d.Source),
		EffectiveAt:   d.EffectiveAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	entries := make([]models.RateSnapshotEntry, 0, len(d.Rates))
	for code, rate := range d.Rates {
		entries = append(entries, models.RateSnapshotEntry{
			SnapshotID:   d.SnapshotID,
			CurrencyCode: string(code),
			Rate:         rate,
		})
	}
	return header, entries
}

// ToDomainRateSnapshot joins a snapshot header with its entry rows
func ToDomainRateSnapshot(m models.RateSnapshot, entries []models.RateSnapshotEntry) domain.RateSnapshot {
	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(entries))
	for _, e := range entries {
		rates[domain.CurrencyCode(e.CurrencyCode)] = e.Rate
	}
	return domain.RateSnapshot{
		SnapshotID:  m.SnapshotID,
		Pivot:       domain.CurrencyCode(m.PivotCurrency),
		Rates:       rates,
		Source:      domain.RateSource(m.Source),
		EffectiveAt: m.EffectiveAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
