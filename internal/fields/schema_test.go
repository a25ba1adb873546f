package fields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecordJSON(t *testing.T) {
	t.Run("every extracted record validates", func(t *testing.T) {
		texts := []string{
			"",
			"Total: $1,234.56",
			"From: Widgets Inc\nBill To: Acme Corp\nDate: 5/1/2024\nTotal: $10.00",
			"Vendor:",
		}
		for _, text := range texts {
			b, err := json.Marshal(Extract(text))
			require.NoError(t, err)
			assert.NoError(t, ValidateRecordJSON(b))
		}
	})

	t.Run("missing field rejected", func(t *testing.T) {
		err := ValidateRecordJSON([]byte(`{"amount":"1.00","buyer":"a","seller":"b"}`))
		assert.Error(t, err)
	})

	t.Run("extra field rejected", func(t *testing.T) {
		err := ValidateRecordJSON([]byte(`{"amount":"","buyer":"","seller":"","date":"","tax":"0.10"}`))
		assert.Error(t, err)
	})

	t.Run("null field rejected", func(t *testing.T) {
		err := ValidateRecordJSON([]byte(`{"amount":null,"buyer":"","seller":"","date":""}`))
		assert.Error(t, err)
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		err := ValidateRecordJSON([]byte(`{not json`))
		assert.Error(t, err)
	})
}
