package controllers

import (
	"log"
	"strconv"
	"strings"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fail renders err and logs anything that is not an expected domain failure.
func fail(c *fiber.Ctx, err error, fallback string) error {
	if utils.KindOf(err) == utils.KindInternal {
		log.Printf("%s %s: %s: %v", c.Method(), c.Path(), fallback, err)
	}
	return utils.Fail(c, err, fallback)
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, utils.InvalidInputError("Invalid id")
	}
	return uint(id), nil
}

// queryID reads an optional numeric id from the query string; 0 means absent.
func queryID(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, utils.InvalidInputError("Invalid " + key)
	}
	return uint(id), nil
}

// search matches term against any of columns, case-insensitively.
func search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if term == "" {
			return tx
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return tx.Where(strings.Join(clauses, " OR "), args...)
	}
}

func userSummary(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name", "email", "avatar")
}

func courseSummary(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "title", "instructor_id")
}
