package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pageza/dietwise/backend/internal/models"
)

// UsersCollection is the root collection holding one document per user.
const UsersCollection = "users"

var ErrInvalidPath = errors.New("invalid document path")

// DateKey formats t as the YYYY-MM-DD key used for adjustment documents.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func UserPath(userID string) string {
	return UsersCollection + "/" + userID
}

func DietPlanCollection(userID string) string {
	return UserPath(userID) + "/dietPlan"
}

func DietPlanPath(userID, day string) string {
	return DietPlanCollection(userID) + "/" + day
}

// MealsCollection returns users/{uid}/dietLog/{YYYY}/{MM}/{DD}/meals for the UTC date of day.
func MealsCollection(userID string, day time.Time) string {
	d := day.UTC()
	return fmt.Sprintf("%s/dietLog/%04d/%02d/%02d/meals", UserPath(userID), d.Year(), int(d.Month()), d.Day())
}

func MealPath(userID string, day time.Time, category models.MealCategory) string {
	return MealsCollection(userID, day) + "/" + string(category)
}

func AdjustmentCollection(userID string) string {
	return UserPath(userID) + "/aiAdjustment"
}

func AdjustmentPath(userID, dateKey string) string {
	return AdjustmentCollection(userID) + "/" + dateKey
}

// splitDocumentPath splits a document path into its parent collection and ID.
// A document path has an even number of non-empty segments.
func splitDocumentPath(path string) (string, string, error) {
	segments := strings.Split(path, "/")
	if len(segments) < 2 || len(segments)%2 != 0 {
		return "", "", fmt.Errorf("%w: %q is not a document path", ErrInvalidPath, path)
	}
	for _, s := range segments {
		if s == "" {
			return "", "", fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}
	}
	last := len(segments) - 1
	return strings.Join(segments[:last], "/"), segments[last], nil
}

func validateCollectionPath(path string) error {
	segments := strings.Split(path, "/")
	if len(segments)%2 != 1 {
		return fmt.Errorf("%w: %q is not a collection path", ErrInvalidPath, path)
	}
	for _, s := range segments {
		if s == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}
	}
	return nil
}
