package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/lueurxax/video-index-bot/internal/core/domain"
)

func TestDoc_RoundTripThroughBSON(t *testing.T) {
	rec := domain.VideoRecord{
		ExternalID:  "BAACAgIAAxkBAAIB",
		StableID:    "AgADBQADnqkx",
		DisplayName: "a.mp4",
		MimeType:    "video/mp4",
		SizeBytes:   1048576,
		ChannelID:   "-100123",
	}

	raw, err := bson.Marshal(toDoc(rec))
	require.NoError(t, err)

	var decoded videoDoc
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	require.Equal(t, rec, fromDoc(decoded))
}

func TestDoc_AbsentFieldsStoredAsNull(t *testing.T) {
	raw, err := bson.Marshal(toDoc(domain.VideoRecord{ExternalID: "f1", StableID: "s1"}))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))

	for _, key := range []string{"file_name", "mime_type", "file_size", "channel_id"} {
		v, ok := m[key]
		require.True(t, ok, "field %s must be present", key)
		require.Nil(t, v, "field %s must be null", key)
	}

	require.Equal(t, "s1", m[fieldStableID])
	require.Equal(t, "f1", m["file_id"])
}

func TestFromDoc_LegacyDocument(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"file_id":        "f1",
		"file_unique_id": "s1",
		"file_name":      nil,
		"file_size":      int64(42),
	})
	require.NoError(t, err)

	var doc videoDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))

	rec := fromDoc(doc)
	require.Equal(t, "f1", rec.ExternalID)
	require.Empty(t, rec.DisplayName)
	require.EqualValues(t, 42, rec.SizeBytes)
	require.Empty(t, rec.ChannelID)
}

func TestOpener_ClientOptions(t *testing.T) {
	target := domain.StorageTarget{Endpoint: "mongodb://db.example.com:27017", Database: "db", Collection: "videos"}

	opts := NewOpener(3 * time.Second).clientOptions(target)
	require.NotNil(t, opts.ServerSelectionTimeout)
	require.Equal(t, 3*time.Second, *opts.ServerSelectionTimeout)
	require.Equal(t, []string{"db.example.com:27017"}, opts.Hosts)

	opts = NewOpener(0).clientOptions(target)
	require.Nil(t, opts.ServerSelectionTimeout)
}
