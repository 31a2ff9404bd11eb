package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

type failingDirectory struct{ err error }

func (d failingDirectory) Search(context.Context, ports.SearchCriteria) (*ports.SearchResult, error) {
	return nil, d.err
}

func (d failingDirectory) GetDetails(context.Context, int64) (*domain.TutorCard, error) {
	return nil, d.err
}

func (d failingDirectory) GetAllSkills(context.Context) ([]string, error) {
	return nil, d.err
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]interface{}
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestLoggingTutorDirectory_ForwardsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	inner := NewTutorDirectory(twoTutorStore(t).Tutors(), nil, zerolog.Nop())
	d := NewLoggingTutorDirectory(inner, zerolog.New(&buf))
	ctx := context.Background()

	res, err := d.Search(ctx, ports.SearchCriteria{Skill: "math"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, cardUsernames(res.Tutors))

	card, err := d.GetDetails(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "bob", card.Username)

	skills, err := d.GetAllSkills(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, 4)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "search", lines[0]["op"])
	assert.Equal(t, float64(1), lines[0]["results"])
	assert.Equal(t, "rating", lines[0]["sort"])
	assert.Equal(t, "details", lines[1]["op"])
	assert.Equal(t, true, lines[1]["found"])
	assert.Equal(t, "skills", lines[2]["op"])
	for _, l := range lines {
		assert.Equal(t, "info", l["level"])
	}
}

func TestLoggingTutorDirectory_LogsErrors(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("store offline")
	d := NewLoggingTutorDirectory(failingDirectory{err: boom}, zerolog.New(&buf))

	_, err := d.Search(context.Background(), ports.SearchCriteria{})
	assert.ErrorIs(t, err, boom)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "store offline", lines[0]["error"])
}
