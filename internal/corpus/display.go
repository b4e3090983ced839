package corpus

import (
	"strconv"

	"github.com/segmentio/parquet-go"

	"github.com/nao1215/wikiextract/internal/model"
)

// DisplayString converts a parquet value to its canonical display form.
// NULL values become model.NullDisplay. Strings are returned as-is,
// integers in decimal, floats in Go's shortest 'g' form, and booleans as
// "true" or "false".
//
// Lookups and report output both go through this function, which is what
// makes page ID matching independent of the physical column type: the
// int64 value 42 and the string "42" have the same display form, while
// "042" matches neither.
func DisplayString(v parquet.Value) string {
	if v.IsNull() {
		return model.NullDisplay
	}

	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		// Int96 and anything new fall back to the library's formatting.
		return v.String()
	}
}
