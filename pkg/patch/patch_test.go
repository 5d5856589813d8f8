package patch_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bizapi/pkg/patch"
)

func ptr[T any](v T) *T { return &v }

type userPatch struct {
	Name     *string `json:"name"     column:"UserName"`
	Email    *string `json:"email"    column:"Email"`
	Phone    *string `json:"phone"    column:"Phone"`
	Password *string `json:"password" column:"-"`
	Note     string  `json:"note"`
}

func TestCollectPresentFieldsInOrder(t *testing.T) {
	set, err := patch.Collect(&userPatch{
		Phone: ptr(""),
		Name:  ptr("Ann"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"UserName", "Phone"}, set.Columns())
	assert.Equal(t, map[string]interface{}{"UserName": "Ann", "Phone": ""}, set.Map())
}

func TestCollectEmpty(t *testing.T) {
	_, err := patch.Collect(&userPatch{Note: "ignored", Password: ptr("secret123")})
	assert.ErrorIs(t, err, patch.ErrNoFields)

	_, err = patch.Collect((*userPatch)(nil))
	assert.ErrorIs(t, err, patch.ErrNoFields)
}

func TestDescribeFallsBackToJSONName(t *testing.T) {
	type invoicePatch struct {
		Amount *float64 `json:"Amount"`
		Status *string
	}
	fields := patch.Describe(reflect.TypeOf(invoicePatch{}))
	require.Len(t, fields, 2)
	assert.Equal(t, "Amount", fields[0].Column)
	assert.Equal(t, "Status", fields[1].Column)
}

func TestZeroValuesAreCollected(t *testing.T) {
	type productPatch struct {
		Price *float64 `json:"price"`
	}
	set, err := patch.Collect(productPatch{Price: ptr(0.0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, set.Map()["price"])
}

func TestAllWritesAbsentAsNull(t *testing.T) {
	set := patch.All(&userPatch{Name: ptr("Ann"), Email: ptr("ann@example.com")})

	assert.Equal(t, []string{"UserName", "Email", "Phone"}, set.Columns())
	assert.Nil(t, set.Map()["Phone"])
}
