package booking

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The reserve filter and update together form a compare-and-swap: the update
// matches only while the doctor is available and the time is absent from the
// date's list, so two concurrent bookings for the same (date, time) cannot
// both commit. MatchedCount == 0 means the slot was taken (or the doctor
// flipped unavailable) between read and write.

func ReserveFilter(docID primitive.ObjectID, date, time string) bson.M {
	return bson.M{
		"_id":                  docID,
		"available":            true,
		"slots_booked." + date: bson.M{"$ne": time},
	}
}

func ReserveUpdate(date, time string) bson.M {
	return bson.M{"$push": bson.M{"slots_booked." + date: time}}
}

// ReleaseUpdate pulls the time out of the date's list. $pull is idempotent,
// so releasing an already-free slot is harmless.
func ReleaseUpdate(date, time string) bson.M {
	return bson.M{"$pull": bson.M{"slots_booked." + date: time}}
}
