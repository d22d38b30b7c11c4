package services

import (
	"fmt"
	"testing"

	"juriscloud/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	dbName := "mem_" + uuid.New().String()
	db, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Client{},
		&models.LegalCase{},
		&models.Task{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.Appointment{},
		&models.Document{},
		&models.Communication{},
	)
	assert.NoError(t, err)
	return db
}

func seedCases(t *testing.T, db *gorm.DB, userID string, n int) {
	for i := 1; i <= n; i++ {
		err := db.Create(&models.LegalCase{
			UserID:     userID,
			CaseNumber: fmt.Sprintf("SEED-%03d", i),
			Title:      fmt.Sprintf("Seeded case %d", i),
			CaseType:   "CIVIL",
		}).Error
		assert.NoError(t, err)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		pageSize int
		expected int
	}{
		{"Empty set still has one page", 0, 9, 1},
		{"Exact fit", 18, 9, 2},
		{"Remainder adds a page", 19, 9, 3},
		{"Single row", 1, 9, 1},
		{"Page size one", 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalPages(tt.total, tt.pageSize))
		})
	}
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		expected   []int
	}{
		{"All pages when few", 1, 3, []int{1, 2, 3}},
		{"Exactly five", 4, 5, []int{1, 2, 3, 4, 5}},
		{"Near the start", 2, 10, []int{1, 2, 3, 4, 5}},
		{"Start boundary", 3, 10, []int{1, 2, 3, 4, 5}},
		{"Centered in the middle", 5, 10, []int{3, 4, 5, 6, 7}},
		{"Near the end", 9, 10, []int{6, 7, 8, 9, 10}},
		{"End boundary", 8, 10, []int{6, 7, 8, 9, 10}},
		{"Single page", 1, 1, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageNumbers(tt.page, tt.totalPages))
		})
	}
}

func TestListParamsNormalized(t *testing.T) {
	p := ListParams{Page: 0, PageSize: 0, Search: "  term  "}.Normalized()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, "term", p.Search)

	p = ListParams{Page: 2, PageSize: 5000}.Normalized()
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestFetchPage(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New().String()
	seedCases(t, db, userID, 20)

	opts := ListOptions{
		SearchColumns: []string{"title", "case_number"},
		Order:         "case_number ASC",
	}

	t.Run("First page", func(t *testing.T) {
		result, err := FetchPage[models.LegalCase](db.Where("user_id = ?", userID), ListParams{Page: 1, PageSize: 9}, opts)
		assert.NoError(t, err)
		assert.Len(t, result.Items, 9)
		assert.Equal(t, int64(20), result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
		assert.Equal(t, "SEED-001", result.Items[0].CaseNumber)
	})

	t.Run("Last page holds the remainder", func(t *testing.T) {
		result, err := FetchPage[models.LegalCase](db.Where("user_id = ?", userID), ListParams{Page: 3, PageSize: 9}, opts)
		assert.NoError(t, err)
		assert.Len(t, result.Items, 2)
	})

	t.Run("Page beyond the end clamps to the last page", func(t *testing.T) {
		result, err := FetchPage[models.LegalCase](db.Where("user_id = ?", userID), ListParams{Page: 99, PageSize: 9}, opts)
		assert.NoError(t, err)
		assert.Equal(t, 3, result.Page)
		assert.Len(t, result.Items, 2)
	})

	t.Run("Search narrows and lands on page one", func(t *testing.T) {
		result, err := FetchPage[models.LegalCase](db.Where("user_id = ?", userID), ListParams{Page: 3, PageSize: 9, Search: "seed-007"}, opts)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, "SEED-007", result.Items[0].CaseNumber)
	})

	t.Run("Search is case insensitive", func(t *testing.T) {
		result, err := FetchPage[models.LegalCase](db.Where("user_id = ?", userID), ListParams{Page: 1, PageSize: 9, Search: "SEEDED CASE 13"}, opts)
		assert.NoError(t, err)
		assert.Len(t, result.Items, 1)
	})

	t.Run("No match still reports one page", func(t *testing.T) {
		result, err := FetchPage[models.LegalCase](db.Where("user_id = ?", userID), ListParams{Page: 1, PageSize: 9, Search: "zzz-nothing"}, opts)
		assert.NoError(t, err)
		assert.Len(t, result.Items, 0)
		assert.Equal(t, 1, result.TotalPages)
		assert.Equal(t, []int{1}, result.PageNumbers())
	})

	t.Run("Deleting the last row of the last page moves back a page", func(t *testing.T) {
		db2 := newTestDB(t)
		owner := uuid.New().String()
		seedCases(t, db2, owner, 10)

		// Page 2 holds exactly one row at page size 9
		result, err := FetchPage[models.LegalCase](db2.Where("user_id = ?", owner), ListParams{Page: 2, PageSize: 9}, opts)
		assert.NoError(t, err)
		assert.Len(t, result.Items, 1)

		assert.NoError(t, db2.Delete(&result.Items[0]).Error)

		result, err = FetchPage[models.LegalCase](db2.Where("user_id = ?", owner), ListParams{Page: 2, PageSize: 9}, opts)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Len(t, result.Items, 9)
	})
}

func TestPageResultMeta(t *testing.T) {
	result := &PageResult[models.LegalCase]{
		TotalCount: 12,
		Page:       2,
		PageSize:   9,
		TotalPages: 2,
	}

	meta := result.Meta()
	assert.Equal(t, 2, meta["page"])
	assert.Equal(t, 9, meta["limit"])
	assert.Equal(t, int64(12), meta["total"])
	assert.Equal(t, 2, meta["total_pages"])
	assert.Equal(t, []int{1, 2}, meta["page_numbers"])
}
