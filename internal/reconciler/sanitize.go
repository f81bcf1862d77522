package reconciler

import (
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/MichalMitros/listing-migrator/internal/platform/rawdoc"
)

const (
	migratedSuffix     = " (Migrated)"
	costTypeCalculated = "CALCULATED"
)

// readOnlyKeys are keys assigned by API which can't be sent back.
var readOnlyKeys = []string{"creationDate", "lastModifiedDate", "version"}

// MigratedName returns name under which source policy is created on target account.
func MigratedName(name string) string {
	return name + migratedSuffix
}

// Sanitize returns copy of source policy payload which target account accepts.
func Sanitize(policy models.SourcePolicy) map[string]any {
	payload, _ := rawdoc.Clone(policy.Payload).(map[string]any)
	if payload == nil {
		payload = map[string]any{}
	}

	delete(payload, policy.Type.IDKey())
	for _, key := range readOnlyKeys {
		delete(payload, key)
	}

	if isEmpty(payload["shipToLocations"]) {
		delete(payload, "shipToLocations")
	}

	for _, option := range rawdoc.List(payload["shippingOptions"]) {
		opt, ok := option.(map[string]any)
		if !ok {
			continue
		}

		delete(opt, "shippingDiscountProfileId")

		if costType, _ := rawdoc.Text(opt["costType"]); costType != costTypeCalculated {
			continue
		}
		for _, service := range rawdoc.List(opt["shippingServices"]) {
			svc, ok := service.(map[string]any)
			if !ok || rawdoc.Bool(svc["freeShipping"]) {
				continue
			}
			svc["buyerResponsibleForShipping"] = true
		}
	}

	payload["name"] = MigratedName(policy.Name)

	return payload
}

// isEmpty reports whether value is present but empty object or list.
func isEmpty(value any) bool {
	switch val := value.(type) {
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}
