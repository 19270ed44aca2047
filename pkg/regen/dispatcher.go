package regen

import (
	"github.com/google/uuid"

	"github.com/carverauto/brokview/pkg/models"
)

// ManageBrok routes one brok to its handler. This is the sole
// error-isolation boundary of the ingestion path: a malformed brok is
// logged and dropped, never propagated; the next brok must always get its
// chance. The caller holds the writer side of the gate.
func (r *Regenerator) ManageBrok(b *models.Brok) {
	handler, ok := r.handlers[b.Type]
	if !ok {
		// Log broks are plentiful and carry nothing we rebuild from.
		if b.Type != models.BrokLog {
			r.log.Warn().
				Str("type", b.Type).
				Msg("Received an unmanaged brok")
		}

		return
	}

	if !r.WantBrok(b.Type) {
		return
	}

	normalizeIdentifiers(b)

	r.log.Debug().Str("type", b.Type).Msg("Got a brok")

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().
				Str("type", b.Type).
				Interface("panic", rec).
				Interface("data", b.Data).
				Msg("Brok handler failed")
		}
	}()

	handler(b.Data)
}

// normalizeIdentifiers mirrors whichever of the dual id/uuid fields is
// present into the other, on the brok itself and on its embedded data, and
// synthesizes a fresh identifier when neither exists. Past this point the
// two fields are always equal, so the store can key on a single canonical
// identifier.
func normalizeIdentifiers(b *models.Brok) {
	// Shinken brokers send id, Alignak brokers send uuid.
	switch {
	case b.ID != "":
		b.UUID = b.ID
	case b.UUID != "":
		b.ID = b.UUID
	}

	if b.Data == nil {
		b.Data = make(map[string]interface{})
	}

	if id, ok := getIdentifier(b.Data, "id"); ok {
		b.Data["uuid"] = id
		b.Data["id"] = id

		return
	}

	if id, ok := getIdentifier(b.Data, "uuid"); ok {
		b.Data["id"] = id
		b.Data["uuid"] = id

		return
	}

	fresh := uuid.New().String()
	b.Data["id"] = fresh
	b.Data["uuid"] = fresh
}
