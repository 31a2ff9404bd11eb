package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

type tutorDocument struct {
	ID            int64      `bson:"_id"`
	AccountID     int64      `bson:"account_id"`
	Skill         string     `bson:"skill"`
	HourlyRate    *float64   `bson:"hourly_rate"`
	AverageRating *float64   `bson:"average_rating"`
	TotalReviews  int        `bson:"total_reviews"`
	Bio           *string    `bson:"bio"`
	Availability  *string    `bson:"availability"`
	CreatedAt     time.Time  `bson:"created_at"`
	DeletedAt     *time.Time `bson:"deleted_at"`
}

func toTutorDocument(p *domain.TutorProfile) tutorDocument {
	return tutorDocument{
		ID:            p.ID,
		AccountID:     p.AccountID,
		Skill:         p.Skill,
		HourlyRate:    p.HourlyRate,
		AverageRating: p.AverageRating,
		TotalReviews:  p.TotalReviews,
		Bio:           p.Bio,
		Availability:  p.Availability,
		CreatedAt:     p.CreatedAt,
		DeletedAt:     p.DeletedAt,
	}
}

func (d tutorDocument) toDomain() domain.TutorProfile {
	return domain.TutorProfile{
		ID:            d.ID,
		AccountID:     d.AccountID,
		Skill:         d.Skill,
		HourlyRate:    d.HourlyRate,
		AverageRating: d.AverageRating,
		TotalReviews:  d.TotalReviews,
		Bio:           d.Bio,
		Availability:  d.Availability,
		CreatedAt:     d.CreatedAt,
		DeletedAt:     d.DeletedAt,
	}
}

// listingDocument is the shape produced by listingPipeline. The profile
// fields sit at the top level next to the joined owner.
type listingDocument struct {
	Profile tutorDocument   `bson:",inline"`
	Owner   accountDocument `bson:"owner"`
}

// listingPipeline joins live profiles matching match with their owning
// account and drops profiles whose owner is missing or tombstoned.
func listingPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: live(match)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionAccounts},
			{Key: "localField", Value: "account_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: "$owner"}},
		{{Key: "$match", Value: bson.M{"owner.deleted_at": nil}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

type TutorRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTutorRepository(db *mongo.Database) *TutorRepository {
	return &TutorRepository{db: db, col: db.Collection(collectionTutors)}
}

var _ ports.TutorRepository = (*TutorRepository)(nil)

func (r *TutorRepository) Create(ctx context.Context, p *domain.TutorProfile) (*domain.TutorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionTutors)
	if err != nil {
		return nil, err
	}
	doc := toTutorDocument(p)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert tutor profile: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *TutorRepository) listings(ctx context.Context, match bson.M) ([]domain.TutorListing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, listingPipeline(match))
	if err != nil {
		return nil, fmt.Errorf("aggregate tutor listings: %w", err)
	}
	var docs []listingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tutor listings: %w", err)
	}

	out := make([]domain.TutorListing, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.TutorListing{
			Profile: d.Profile.toDomain(),
			Owner:   *d.Owner.toDomain(),
		})
	}
	return out, nil
}

func (r *TutorRepository) ListActive(ctx context.Context) ([]domain.TutorListing, error) {
	return r.listings(ctx, nil)
}

func (r *TutorRepository) FindActive(ctx context.Context, id int64) (*domain.TutorListing, error) {
	ls, err := r.listings(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(ls) == 0 {
		return nil, domain.ErrTutorProfileNotFound
	}
	return &ls[0], nil
}

// ActiveSkillLists reads skill text from profiles without a tombstone; the
// owner's state is not consulted.
func (r *TutorRepository) ActiveSkillLists(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"skill": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, live(bson.M{"skill": bson.M{"$ne": ""}}), opts)
	if err != nil {
		return nil, fmt.Errorf("find skills: %w", err)
	}
	var docs []struct {
		Skill string `bson:"skill"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}

	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Skill)
	}
	return out, nil
}

func (r *TutorRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.TutorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"account_id": accountID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find tutor profiles: %w", err)
	}
	var docs []tutorDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tutor profiles: %w", err)
	}

	out := make([]domain.TutorProfile, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TutorRepository) UpdateByAccount(ctx context.Context, accountID int64, u ports.TutorProfileUpdate) (*domain.TutorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"skill":        u.Skill,
		"hourly_rate":  u.HourlyRate,
		"bio":          u.Bio,
		"availability": u.Availability,
	}}

	var doc tutorDocument
	err := r.col.FindOneAndUpdate(ctx, live(bson.M{"account_id": accountID}), update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTutorProfileNotFound
		}
		return nil, fmt.Errorf("update tutor profile: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

func (r *TutorRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, live(nil))
	if err != nil {
		return 0, fmt.Errorf("count tutor profiles: %w", err)
	}
	return n, nil
}
