package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tessera-xyz/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type listingPatch struct {
		Seller    *string `bson:"seller,omitempty"`
		Quantity  *int    `bson:"quantity,omitempty"`
		Contract  string  `bson:"contract"`
		TokenId   string  `bson:"tokenId"`
		Untouched string  `bson:"-"`
	}

	patch := &listingPatch{
		Seller:    ptr.String(""),
		Quantity:  ptr.Int(3),
		TokenId:   "7",
		Untouched: "dropped",
	}

	updater, err := MakeBsonM(patch)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			// pointer fields survive even when they point at a zero value
			"seller":   "",
			"quantity": 3,
			// contract is zero valued, so it is dropped
			"tokenId": "7",
		},
		updater,
	)
}
