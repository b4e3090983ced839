package corpus

import (
	"testing"

	"github.com/segmentio/parquet-go"

	"github.com/nao1215/wikiextract/internal/model"
)

// TestDisplayString tests canonical stringification of parquet values.
func TestDisplayString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value parquet.Value
		want  string
	}{
		{name: "null becomes None", value: parquet.ValueOf(nil), want: model.NullDisplay},
		{name: "string passes through", value: parquet.ValueOf("Москва"), want: "Москва"},
		{name: "empty string stays empty", value: parquet.ValueOf(""), want: ""},
		{name: "int64 in decimal", value: parquet.ValueOf(int64(42)), want: "42"},
		{name: "negative int64", value: parquet.ValueOf(int64(-7)), want: "-7"},
		{name: "int32 in decimal", value: parquet.ValueOf(int32(123)), want: "123"},
		{name: "double shortest form", value: parquet.ValueOf(2.5), want: "2.5"},
		{name: "double scientific form", value: parquet.ValueOf(1e21), want: "1e+21"},
		{name: "float32 shortest form", value: parquet.ValueOf(float32(3.5)), want: "3.5"},
		{name: "bool true", value: parquet.ValueOf(true), want: "true"},
		{name: "bool false", value: parquet.ValueOf(false), want: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DisplayString(tt.value); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}
