package enums

import "fmt"

// ProductCategory represents the canonical catalog categories for the storefront.
type ProductCategory string

const (
	ProductCategoryTextbook      ProductCategory = "textbook"
	ProductCategoryWorkbook      ProductCategory = "workbook"
	ProductCategoryReader        ProductCategory = "reader"
	ProductCategoryStationery    ProductCategory = "stationery"
	ProductCategoryArtSupplies   ProductCategory = "art_supplies"
	ProductCategoryScienceKit    ProductCategory = "science_kit"
	ProductCategoryMathTools     ProductCategory = "math_tools"
	ProductCategoryFlashcards    ProductCategory = "flashcards"
	ProductCategoryTeacherGuide  ProductCategory = "teacher_guide"
	ProductCategoryDigitalAccess ProductCategory = "digital_access"
)

var validProductCategories = []ProductCategory{
	ProductCategoryTextbook,
	ProductCategoryWorkbook,
	ProductCategoryReader,
	ProductCategoryStationery,
	ProductCategoryArtSupplies,
	ProductCategoryScienceKit,
	ProductCategoryMathTools,
	ProductCategoryFlashcards,
	ProductCategoryTeacherGuide,
	ProductCategoryDigitalAccess,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
