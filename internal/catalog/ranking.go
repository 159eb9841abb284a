// internal/catalog/ranking.go
package catalog

import (
	"fmt"

	"github.com/google/uuid"
)

// rankedRow is the ranking projection: identity plus the popularity metrics
// computed over the full filtered set. The page window is cut from rows
// ordered by these metrics, never before.
type rankedRow struct {
	ID              uuid.UUID
	PopularityCount int64
	NumReviews      int64
	AvgRating       float64
}

// rankMetrics indexes ranked rows for DTO assembly.
type rankMetrics map[uuid.UUID]rankedRow

func (rows rankedRows) metrics() rankMetrics {
	m := make(rankMetrics, len(rows))
	for _, r := range rows {
		m[r.ID] = r
	}
	return m
}

func (rows rankedRows) ids() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

type rankedRows []rankedRow

// popularitySQL is the per-item popularity annotation: like counts for
// designs, completed-order line counts for the variant-backed kinds.
func (d *descriptor) popularitySQL() string {
	if d.salesRanked {
		return fmt.Sprintf(
			"(SELECT COUNT(*) FROM order_items oi JOIN orders o ON o.id = oi.order_id JOIN variants v ON v.id = oi.variant_id WHERE o.status = 'completed' AND v.%s = %s)",
			d.parentColumn(), d.col("id"),
		)
	}
	return fmt.Sprintf("(SELECT COUNT(*) FROM likes WHERE likes.design_id = %s)", d.col("id"))
}

func (d *descriptor) reviewCountSQL() string {
	return fmt.Sprintf(
		"(SELECT COUNT(*) FROM reviews r JOIN variants v ON v.id = r.variant_id WHERE v.%s = %s)",
		d.parentColumn(), d.col("id"),
	)
}

func (d *descriptor) avgRatingSQL() string {
	return fmt.Sprintf(
		"(SELECT COALESCE(AVG(r.rating), 0) FROM reviews r JOIN variants v ON v.id = r.variant_id WHERE v.%s = %s)",
		d.parentColumn(), d.col("id"),
	)
}

// rankingSelect projects identity plus every metric this kind ranks by.
func (d *descriptor) rankingSelect() string {
	sel := fmt.Sprintf("%s AS id, %s AS popularity_count", d.col("id"), d.popularitySQL())
	if d.hasVariants {
		sel += fmt.Sprintf(", %s AS num_reviews, %s AS avg_rating", d.reviewCountSQL(), d.avgRatingSQL())
	}
	return sel
}

// orderClause is the deterministic ordering: popularity first, identifier
// ascending as the final tie-break so pagination is stable across calls.
func (d *descriptor) orderClause() string {
	if d.hasVariants {
		return fmt.Sprintf("popularity_count DESC, num_reviews DESC, avg_rating DESC, %s ASC", d.col("id"))
	}
	return fmt.Sprintf("popularity_count DESC, %s ASC", d.col("id"))
}
