// Package cdxml converts between cooldowns XML files and models.Document.
package cdxml

import (
	"github.com/abianche/uoo-cooldown-manager/internal/models"
	"github.com/abianche/uoo-cooldown-manager/internal/schema"
)

// Parse decodes and normalizes a cooldowns file. Errors match ErrParse or
// schema.ErrValidation.
func Parse(data []byte) (*models.Document, error) {
	raw, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return schema.Normalize(raw)
}
