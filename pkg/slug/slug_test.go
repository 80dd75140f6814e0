package slug_test

import (
	"testing"

	"github.com/jhoicas/menu-admin-api/pkg/slug"
	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Ají de Gallina":       "aji-de-gallina",
		"  Pollo a la Brasa! ": "pollo-a-la-brasa",
		"Ñoquis   caseros":     "noquis-caseros",
		"Café & Postres 2x1":   "cafe-postres-2x1",
		"---":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("la-cevicheria"))
	assert.False(t, slug.Valid("La Cevichería"))
	assert.False(t, slug.Valid(""))
}
