package productpage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BreadcrumbSelector matches the category breadcrumb items on LCSC pages.
const BreadcrumbSelector = ".v-breadcrumbs__item"

// Table row labels read from the product attribute table.
const (
	LabelDescription = "Description"
	LabelPackage     = "Package"
)

// FindAdjacentCellText returns the trimmed text of the cell that follows the
// first table cell whose text equals label exactly. It returns "" when no
// such cell exists or it has no next sibling cell.
func FindAdjacentCellText(doc *goquery.Document, label string) string {
	var text string
	doc.Find("td, th").EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if cell.Text() != label {
			return true
		}
		if next := cell.NextFiltered("td, th"); next.Length() > 0 {
			text = strings.TrimSpace(next.Text())
		}
		return false
	})
	return text
}

// FindDescription returns the product description row, or "".
func FindDescription(doc *goquery.Document) string {
	return FindAdjacentCellText(doc, LabelDescription)
}

// FindPackage returns the package row, or "".
func FindPackage(doc *goquery.Document) string {
	return FindAdjacentCellText(doc, LabelPackage)
}

// FindBreadcrumbCategory returns the text of the second-to-last breadcrumb,
// which is the part's leaf category on LCSC pages.
func FindBreadcrumbCategory(doc *goquery.Document) string {
	return FindBreadcrumbCategoryWith(doc, BreadcrumbSelector)
}

// FindBreadcrumbCategoryWith is FindBreadcrumbCategory with a custom
// selector. It returns "" if fewer than two elements match.
func FindBreadcrumbCategoryWith(doc *goquery.Document, selector string) string {
	crumbs := doc.Find(selector)
	if crumbs.Length() < 2 {
		return ""
	}
	return strings.TrimSpace(crumbs.Eq(crumbs.Length() - 2).Text())
}
