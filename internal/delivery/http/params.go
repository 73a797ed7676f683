package http

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/calories/backend/internal/domain"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var integerPattern = regexp.MustCompile(`^[+-]?\d+$`)

// calculateQuery holds the raw CalculateCalories parameters. food and gram
// may be repeated or comma separated.
type calculateQuery struct {
	ProductCount string   `form:"productCount" json:"productCount"`
	Food         []string `form:"food" json:"food"`
	Gram         []string `form:"gram" json:"gram"`
}

func (q *calculateQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.ProductCount, validation.Required, validation.Match(integerPattern).Error("must be an integer")),
		validation.Field(&q.Food, validation.Required),
		validation.Field(&q.Gram, validation.Required, validation.Each(validation.Match(integerPattern).Error("must be an integer"))),
	)
}

// bindCalculateQuery reads and checks the CalculateCalories parameters. Blank
// entries are kept so the per-index checks downstream can report them.
func bindCalculateQuery(c *gin.Context) (int, []string, []int, error) {
	q := calculateQuery{
		ProductCount: c.Query("productCount"),
		Food:         splitList(c.QueryArray("food")),
		Gram:         splitList(c.QueryArray("gram")),
	}
	if err := q.Validate(); err != nil {
		return 0, nil, nil, fmt.Errorf("%w: %v", domain.ErrBadInput, err)
	}

	count, err := strconv.Atoi(q.ProductCount)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("%w: parameter 'productCount' is out of range", domain.ErrBadInput)
	}
	grams := make([]int, len(q.Gram))
	for i, raw := range q.Gram {
		grams[i], err = strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, nil, nil, fmt.Errorf("%w: weight at index %d must be an integer, got %q", domain.ErrBadInput, i, raw)
		}
	}
	return count, q.Food, grams, nil
}

// splitList flattens repeated and comma separated values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

// requiredQuery returns a query parameter that must be present
func requiredQuery(c *gin.Context, name string) (string, error) {
	value, ok := c.GetQuery(name)
	if !ok {
		return "", fmt.Errorf("%w: required parameter '%s' is missing", domain.ErrBadInput, name)
	}
	if err := validation.Validate(value, validation.Required); err != nil {
		return "", fmt.Errorf("%w: parameter '%s' %v", domain.ErrBadInput, name, err)
	}
	return value, nil
}

func requiredIntQuery(c *gin.Context, name string) (int, error) {
	raw, err := requiredQuery(c, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: parameter '%s' must be an integer, got %q", domain.ErrBadInput, name, raw)
	}
	return n, nil
}

func requiredIDQuery(c *gin.Context, name string) (int64, error) {
	raw, err := requiredQuery(c, name)
	if err != nil {
		return 0, err
	}
	return parseID(name, raw)
}

// pathID parses the :id path segment
func pathID(c *gin.Context) (int64, error) {
	return parseID("id", c.Param("id"))
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter '%s' must be an integer id, got %q", domain.ErrBadInput, name, raw)
	}
	return id, nil
}
