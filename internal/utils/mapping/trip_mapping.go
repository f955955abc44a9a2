package mapping

import (
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/models"
)

// ToModelTrip converts a domain Trip to a model Trip
func ToModelTrip(d domain.Trip) models.Trip {
	return models.Trip{
		TripID:          d.TripID,
		Name:            d.Name,
		Description:     d.Description,
		DefaultCurrency: string(d.DefaultCurrency),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTrip converts a model Trip to a domain Trip
func ToDomainTrip(m models.Trip) domain.Trip {
	return domain.Trip{
		TripID:          m.TripID,
		Name:            m.Name,
		Description:     m.Description,
		DefaultCurrency: domain.CurrencyCode(m.DefaultCurrency),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
