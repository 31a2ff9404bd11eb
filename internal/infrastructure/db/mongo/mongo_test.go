package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

func TestLive_AddsTombstoneFilterWithoutMutatingInput(t *testing.T) {
	in := bson.M{"email": "a@b.c"}
	out := live(in)

	assert.Equal(t, bson.M{"email": "a@b.c", "deleted_at": nil}, out)
	assert.NotContains(t, in, "deleted_at")
	assert.Equal(t, bson.M{"deleted_at": nil}, live(nil))
}

func TestResetTokenFilter_ExpiryIsStrict(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f := resetTokenFilter("tok", now)

	assert.Equal(t, "tok", f["reset_token"])
	assert.Equal(t, bson.M{"$gt": now}, f["reset_token_expiry"])
	assert.Contains(t, f, "deleted_at")
}

func TestListingPipeline_JoinsOwnerAndDropsDeleted(t *testing.T) {
	p := listingPipeline(bson.M{"_id": int64(7)})
	require.Len(t, p, 5)

	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, bson.M{"_id": int64(7), "deleted_at": nil}, p[0][0].Value)

	assert.Equal(t, "$lookup", p[1][0].Key)
	lookup := p[1][0].Value.(bson.D).Map()
	assert.Equal(t, collectionAccounts, lookup["from"])
	assert.Equal(t, "account_id", lookup["localField"])
	assert.Equal(t, "owner", lookup["as"])

	assert.Equal(t, "$unwind", p[2][0].Key)
	assert.Equal(t, bson.M{"owner.deleted_at": nil}, p[3][0].Value)
	assert.Equal(t, "$sort", p[4][0].Key)
}

func TestAccountDocument_RoundTripKeepsResetFields(t *testing.T) {
	token := "tok"
	expiry := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	a := &domain.Account{
		ID:               3,
		Email:            "a@b.c",
		Username:         "ab",
		RoleID:           domain.RoleTutor,
		ResetToken:       &token,
		ResetTokenExpiry: &expiry,
	}

	raw, err := bson.Marshal(toAccountDocument(a))
	require.NoError(t, err)

	var doc accountDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	got := doc.toDomain()
	assert.Equal(t, domain.RoleTutor, got.RoleID)
	require.NotNil(t, got.ResetToken)
	assert.Equal(t, "tok", *got.ResetToken)
	assert.Nil(t, got.DeletedAt)
}

func TestListingDocument_DecodesInlineProfile(t *testing.T) {
	rate := 25.0
	raw, err := bson.Marshal(bson.M{
		"_id":         int64(4),
		"account_id":  int64(9),
		"skill":       "Go, SQL",
		"hourly_rate": rate,
		"deleted_at":  nil,
		"owner":       bson.M{"_id": int64(9), "username": "tutor", "role_id": 3},
	})
	require.NoError(t, err)

	var doc listingDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, int64(4), doc.Profile.ID)
	assert.Equal(t, int64(9), doc.Profile.AccountID)
	assert.Equal(t, "Go, SQL", doc.Profile.Skill)
	require.NotNil(t, doc.Profile.HourlyRate)
	assert.Equal(t, rate, *doc.Profile.HourlyRate)
	assert.Equal(t, "tutor", doc.Owner.Username)

	p := doc.Profile.toDomain()
	assert.Equal(t, int64(4), p.ID)
	assert.Equal(t, "Go, SQL", p.Skill)
}

func TestListingDocument_RoundTripThroughMarshal(t *testing.T) {
	rating := 4.5
	in := listingDocument{
		Profile: tutorDocument{ID: 2, AccountID: 5, Skill: "Math", AverageRating: &rating, TotalReviews: 3},
		Owner:   accountDocument{ID: 5, Username: "m", RoleID: 3},
	}
	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var flat bson.M
	require.NoError(t, bson.Unmarshal(raw, &flat))
	assert.Equal(t, "Math", flat["skill"], "profile fields are flattened to the top level")
	assert.NotContains(t, flat, "profile")

	var out listingDocument
	require.NoError(t, bson.Unmarshal(raw, &out))
	assert.Equal(t, int64(2), out.Profile.ID)
	require.NotNil(t, out.Profile.AverageRating)
	assert.Equal(t, rating, *out.Profile.AverageRating)
	assert.Equal(t, 3, out.Profile.TotalReviews)
}

func TestConnect_InvalidURI(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "not-a-uri", Database: "x", Timeout: time.Second})
	require.Error(t, err)
}
