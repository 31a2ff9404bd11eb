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

type accountDocument struct {
	ID               int64      `bson:"_id"`
	Email            string     `bson:"email"`
	Username         string     `bson:"username"`
	FirstName        string     `bson:"first_name"`
	LastName         string     `bson:"last_name"`
	CredentialSalt   string     `bson:"credential_salt"`
	CredentialDigest string     `bson:"credential_digest"`
	RoleID           int        `bson:"role_id"`
	CreatedAt        time.Time  `bson:"created_at"`
	DeletedAt        *time.Time `bson:"deleted_at"`
	ResetToken       *string    `bson:"reset_token,omitempty"`
	ResetTokenExpiry *time.Time `bson:"reset_token_expiry,omitempty"`
}

func toAccountDocument(a *domain.Account) accountDocument {
	return accountDocument{
		ID:               a.ID,
		Email:            a.Email,
		Username:         a.Username,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		CredentialSalt:   a.CredentialSalt,
		CredentialDigest: a.CredentialDigest,
		RoleID:           int(a.RoleID),
		CreatedAt:        a.CreatedAt,
		DeletedAt:        a.DeletedAt,
		ResetToken:       a.ResetToken,
		ResetTokenExpiry: a.ResetTokenExpiry,
	}
}

func (d accountDocument) toDomain() *domain.Account {
	return &domain.Account{
		ID:               d.ID,
		Email:            d.Email,
		Username:         d.Username,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		CredentialSalt:   d.CredentialSalt,
		CredentialDigest: d.CredentialDigest,
		RoleID:           domain.RoleID(d.RoleID),
		CreatedAt:        d.CreatedAt,
		DeletedAt:        d.DeletedAt,
		ResetToken:       d.ResetToken,
		ResetTokenExpiry: d.ResetTokenExpiry,
	}
}

// live restricts filter to accounts without a tombstone. A nil deleted_at
// matches both an explicit null and a missing field.
func live(filter bson.M) bson.M {
	out := bson.M{"deleted_at": nil}
	for k, v := range filter {
		out[k] = v
	}
	return out
}

// resetTokenFilter matches the live account holding token with an expiry
// strictly after now.
func resetTokenFilter(token string, now time.Time) bson.M {
	return live(bson.M{
		"reset_token":        token,
		"reset_token_expiry": bson.M{"$gt": now},
	})
}

type AccountRepository struct {
	db     *mongo.Database
	col    *mongo.Collection
	tutors *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		db:     db,
		col:    db.Collection(collectionAccounts),
		tutors: db.Collection(collectionTutors),
	}
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

// Create assigns the next account id and inserts the document.
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionAccounts)
	if err != nil {
		return nil, err
	}
	doc := toAccountDocument(a)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindActiveByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, live(bson.M{"_id": id}))
}

// FindActiveByEmail returns the oldest live account with the given email.
func (r *AccountRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDocument
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	if err := r.col.FindOne(ctx, live(bson.M{"email": email}), opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, live(filter), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) ExistsActiveByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *AccountRepository) ExistsActiveByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *AccountRepository) ListActive(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, live(nil), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	var docs []accountDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	out := make([]*domain.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *AccountRepository) CountActive(ctx context.Context, role *domain.RoleID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if role != nil {
		filter["role_id"] = int(*role)
	}
	n, err := r.col.CountDocuments(ctx, live(filter))
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// updateByID applies update to the account with id and maps a miss to
// domain.ErrAccountNotFound.
func (r *AccountRepository) updateByID(ctx context.Context, filter bson.M, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id int64, u ports.AccountProfileUpdate) error {
	return r.updateByID(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"username":   u.Username,
		"role_id":    int(u.RoleID),
	}})
}

func (r *AccountRepository) SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	return r.updateByID(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}})
}

func (r *AccountRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.Account, error) {
	return r.findOne(ctx, resetTokenFilter(token, now))
}

// CompleteReset matches on the token as well as the id, so a concurrent reset
// that already consumed the token leaves the credentials untouched.
func (r *AccountRepository) CompleteReset(ctx context.Context, id int64, token, salt, digest string) error {
	return r.updateByID(ctx, bson.M{"_id": id, "reset_token": token}, bson.M{
		"$set": bson.M{
			"credential_salt":   salt,
			"credential_digest": digest,
		},
		"$unset": bson.M{
			"reset_token":        "",
			"reset_token_expiry": "",
		},
	})
}

// SoftDelete tombstones the account and its tutor profiles inside one
// transaction. Transactions require a replica set deployment.
func (r *AccountRepository) SoftDelete(ctx context.Context, id int64, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return false, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	found, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col.UpdateOne(sc, bson.M{"_id": id}, bson.M{"$set": bson.M{"deleted_at": at}})
		if err != nil {
			return false, err
		}
		if res.MatchedCount == 0 {
			return false, nil
		}
		if _, err := r.tutors.UpdateMany(sc, bson.M{"account_id": id}, bson.M{"$set": bson.M{"deleted_at": at}}); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("soft delete account %d: %w", id, err)
	}
	return found.(bool), nil
}
