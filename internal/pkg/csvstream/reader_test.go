package csvstream

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) ([]Row, error) {
	t.Helper()
	var rows []Row
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

func TestReader_HeaderKeyedTrimmedRows(t *testing.T) {
	input := "\ufeffname , Dob ,gender\n  Alice , 2000-01-01 ,F\n\nBob,1995-05-20, M \n"
	r := NewReader(strings.NewReader(input))

	rows, err := readAll(t, r)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"name", "Dob", "gender"}, r.Header())
	assert.Equal(t, Row{"name": "Alice", "Dob": "2000-01-01", "gender": "F"}, rows[0])
	assert.Equal(t, Row{"name": "Bob", "Dob": "1995-05-20", "gender": "M"}, rows[1])
	assert.Equal(t, 2, r.Rows())
}

func TestReader_QuotedFields(t *testing.T) {
	input := "name,gallery\n\"Sayed, Abu\",\"a.jpg,b.jpg\"\n"
	rows, err := readAll(t, NewReader(strings.NewReader(input)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sayed, Abu", rows[0]["name"])
	assert.Equal(t, "a.jpg,b.jpg", rows[0]["gallery"])
}

func TestReader_EmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
	assert.Nil(t, r.Header())
}

func TestReader_HeaderOnly(t *testing.T) {
	rows, err := readAll(t, NewReader(strings.NewReader("name,Dob\n")))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReader_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "wrong field count", input: "name,Dob\nAlice\n"},
		{name: "unterminated quote", input: "name,Dob\n\"Alice,2000-01-01\n"},
		{name: "bare quote", input: "name,Dob\nAl\"ice,2000-01-01\n"},
		{name: "duplicate header", input: "name,name\na,b\n"},
		{name: "empty header cell", input: "name,,Dob\na,b,c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input))
			_, err := readAll(t, r)
			require.Error(t, err)
			assert.NotEqual(t, io.EOF, err)

			_, err = r.Next()
			assert.Equal(t, io.EOF, err, "reader stays exhausted after a failure")
		})
	}
}

func TestRow_Get(t *testing.T) {
	row := Row{"Dob": "", "dob": "2000-01-01"}
	assert.Equal(t, "2000-01-01", row.Get("Dob", "dob", "DOB"))
	assert.Equal(t, "", row.Get("missing"))
}
