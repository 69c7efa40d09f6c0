// Package mongostore serves mongodb:// and mongodb+srv:// storage targets.
// Documents keep the field names of the original catalog format so existing
// collections stay readable.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
	apperrors "github.com/lueurxax/video-index-bot/internal/core/errors"
	"github.com/lueurxax/video-index-bot/internal/core/ports"
)

// Schemes lists the endpoint schemes served by this backend.
var Schemes = []string{"mongodb", "mongodb+srv"}

const fieldStableID = "file_unique_id"

// videoDoc is the persisted shape. Optional fields are pointers so absent
// values are stored as null.
type videoDoc struct {
	ExternalID  string  `bson:"file_id"`
	StableID    string  `bson:"file_unique_id"`
	DisplayName *string `bson:"file_name"`
	MimeType    *string `bson:"mime_type"`
	SizeBytes   *int64  `bson:"file_size"`
	ChannelID   *string `bson:"channel_id"`
}

// Opener connects one client per Open call.
type Opener struct {
	selectionTimeout time.Duration
}

var _ ports.GatewayOpener = (*Opener)(nil)

// NewOpener creates an opener using the target endpoint as the connection URI.
// selectionTimeout bounds how long an unreachable server blocks Open; zero
// keeps the driver default.
func NewOpener(selectionTimeout time.Duration) *Opener {
	return &Opener{selectionTimeout: selectionTimeout}
}

func (o *Opener) clientOptions(target domain.StorageTarget) *options.ClientOptions {
	opts := options.Client().ApplyURI(target.Endpoint)
	if o.selectionTimeout > 0 {
		opts.SetServerSelectionTimeout(o.selectionTimeout)
	}

	return opts
}

// Open connects and pings the server, so a bad descriptor fails here rather
// than halfway through an operation.
func (o *Opener) Open(ctx context.Context, target domain.StorageTarget) (ports.StorageGateway, error) {
	client, err := mongo.Connect(o.clientOptions(target))
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", target.RedactedEndpoint(), err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx) //nolint:errcheck // connection already unusable

		return nil, fmt.Errorf("ping %s: %w", target.RedactedEndpoint(), err)
	}

	return &Gateway{
		client: client,
		coll:   client.Database(target.Database).Collection(target.Collection),
	}, nil
}

var _ ports.StorageGateway = (*Gateway)(nil)

// Gateway wraps one client and its collection.
type Gateway struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// FindByStableID looks up a document by file_unique_id.
func (g *Gateway) FindByStableID(ctx context.Context, stableID string) (domain.VideoRecord, bool, error) {
	var doc videoDoc

	err := g.coll.FindOne(ctx, bson.M{fieldStableID: stableID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.VideoRecord{}, false, nil
	}

	if err != nil {
		return domain.VideoRecord{}, false, fmt.Errorf("find %s=%s: %w", fieldStableID, stableID, err)
	}

	return fromDoc(doc), true, nil
}

// Insert stores a new document. A unique index created by the collection owner
// surfaces as ErrDuplicateRecord.
func (g *Gateway) Insert(ctx context.Context, record domain.VideoRecord) error {
	if _, err := g.coll.InsertOne(ctx, toDoc(record)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert %s: %w", record.StableID, apperrors.ErrDuplicateRecord)
		}

		return fmt.Errorf("insert %s: %w", record.StableID, err)
	}

	return nil
}

// FindAll returns every document without the _id field.
func (g *Gateway) FindAll(ctx context.Context) ([]domain.VideoRecord, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})

	cursor, err := g.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}

	var docs []videoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode all: %w", err)
	}

	records := make([]domain.VideoRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, fromDoc(doc))
	}

	return records, nil
}

// Count returns the exact number of documents.
func (g *Gateway) Count(ctx context.Context) (int64, error) {
	n, err := g.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}

	return n, nil
}

// Close disconnects the client.
func (g *Gateway) Close(ctx context.Context) error {
	if err := g.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}

	return nil
}

func toDoc(r domain.VideoRecord) videoDoc {
	return videoDoc{
		ExternalID:  r.ExternalID,
		StableID:    r.StableID,
		DisplayName: optString(r.DisplayName),
		MimeType:    optString(r.MimeType),
		SizeBytes:   optInt64(r.SizeBytes),
		ChannelID:   optString(r.ChannelID),
	}
}

func fromDoc(d videoDoc) domain.VideoRecord {
	r := domain.VideoRecord{
		ExternalID: d.ExternalID,
		StableID:   d.StableID,
	}

	if d.DisplayName != nil {
		r.DisplayName = *d.DisplayName
	}

	if d.MimeType != nil {
		r.MimeType = *d.MimeType
	}

	if d.SizeBytes != nil {
		r.SizeBytes = *d.SizeBytes
	}

	if d.ChannelID != nil {
		r.ChannelID = *d.ChannelID
	}

	return r
}

func optString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func optInt64(n int64) *int64 {
	if n == 0 {
		return nil
	}

	return &n
}
