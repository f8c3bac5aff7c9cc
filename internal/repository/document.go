package repository

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/petpal/petpal/internal/model"
)

// BSON binary subtypes for UUIDs (standard and legacy).
const (
	subtypeUUID       byte = 0x04
	subtypeUUIDLegacy byte = 0x03
)

type userDocument struct {
	ID    primitive.Binary `bson:"_id"`
	User  string           `bson:"user"`
	Email string           `bson:"email"`
}

// storedUser reads _id raw so that documents written by other tools
// (ObjectID keys) still decode.
type storedUser struct {
	ID    bson.RawValue `bson:"_id"`
	User  string        `bson:"user"`
	Email string        `bson:"email"`
}

type petDocument struct {
	ID     primitive.Binary `bson:"_id"`
	Pet    string           `bson:"pet"`
	UserID primitive.Binary `bson:"user_id"`
}

func newUserDocument(user, email string) userDocument {
	return userDocument{ID: uuidToBinary(uuid.New()), User: user, Email: email}
}

func uuidToBinary(id uuid.UUID) primitive.Binary {
	data := make([]byte, len(id))
	copy(data, id[:])
	return primitive.Binary{Subtype: subtypeUUID, Data: data}
}

func binaryToUUID(b primitive.Binary) (uuid.UUID, bool) {
	if b.Subtype != subtypeUUID && b.Subtype != subtypeUUIDLegacy {
		return uuid.Nil, false
	}
	id, err := uuid.FromBytes(b.Data)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// toModel converts a stored document. Keys that are not UUIDs map to uuid.Nil.
func (d storedUser) toModel() *model.User {
	u := &model.User{User: d.User, Email: d.Email}
	if subtype, data, ok := d.ID.BinaryOK(); ok {
		if id, ok := binaryToUUID(primitive.Binary{Subtype: subtype, Data: data}); ok {
			u.ID = id
		}
	}
	return u
}

func (d petDocument) toModel() *model.Pet {
	p := &model.Pet{Pet: d.Pet}
	p.ID, _ = binaryToUUID(d.ID)
	p.UserID, _ = binaryToUUID(d.UserID)
	return p
}
