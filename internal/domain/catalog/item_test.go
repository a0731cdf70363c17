package catalog

import (
	"testing"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRef_Validate(t *testing.T) {
	m, p := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		ref     ItemRef
		wantErr bool
	}{
		{"material only is valid", ItemRef{MaterialID: &m}, false},
		{"product only is valid", ItemRef{ProductID: &p}, false},
		{"both set is rejected", ItemRef{MaterialID: &m, ProductID: &p}, true},
		{"neither set is rejected", ItemRef{}, true},
		{"nil uuid is rejected", MaterialRef(uuid.Nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr {
				assert.True(t, shared.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestItemRef_KeyRoundTrip(t *testing.T) {
	id := uuid.New()
	ref := MaterialRef(id)
	key := ref.Key()

	assert.Equal(t, ItemKindMaterial, key.Kind)
	assert.Equal(t, id, key.ID)
	assert.Equal(t, ref, key.Ref())
	assert.Equal(t, ItemKindProduct, ProductRef(id).Kind())
}

func TestNewMaterialAndProduct(t *testing.T) {
	m, err := NewMaterial("vai-kaki", "Vải kaki", "m")
	require.NoError(t, err)
	assert.Equal(t, "VAI-KAKI", m.Code)
	assert.Equal(t, ItemKindMaterial, m.Ref().Kind())

	p, err := NewProduct("AO01", "Áo sơ mi", "")
	require.NoError(t, err)
	assert.Equal(t, "cái", p.Unit)
	assert.Equal(t, ItemKindProduct, p.Ref().Kind())

	_, err = NewProduct("", "x", "")
	assert.True(t, shared.IsValidation(err))
}
