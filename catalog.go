package main

// CatalogEntry is one customer record of the contact catalog. All fields are
// optional strings; absent ones stay empty through enrichment.
type CatalogEntry struct {
	CustomerID string
	City       string
	Email      string
	Country    string
	Region     string
	Phone      string
}

// Catalog is a deduplicated catalog keyed by trimmed customer ID. Fields
// lists the semantic columns the source actually supplied, in canonical
// order, so the enricher only emits columns that can hold data.
type Catalog struct {
	Source  string
	Fields  []string
	Entries map[string]CatalogEntry
}

func (c *Catalog) lookup(customerID string) (CatalogEntry, bool) {
	entry, ok := c.Entries[customerID]
	return entry, ok
}

// catalogFromRows builds the catalog from a header-less positional extract,
// the alternate sheet of the sales workbook. The mapping fixes which column
// letter holds which field. Sheet readers trim trailing empty cells, so a
// mapped column beyond the end of a row reads as empty; a row is only a
// row-level failure when the key itself is unreachable or blank. The count
// of skipped rows comes back for the caller to log.
func catalogFromRows(rows [][]string, mapping []CatalogColumn) (*Catalog, int) {
	cat := &Catalog{
		Source:  "workbook",
		Fields:  mappedFields(mapping),
		Entries: map[string]CatalogEntry{},
	}
	skipped := 0
	for _, row := range rows {
		entry := CatalogEntry{}
		for _, column := range mapping {
			idx, err := columnLetterIndex(column.Letter)
			if err != nil {
				continue
			}
			setCatalogField(&entry, column.Field, getValue(row, idx))
		}
		if entry.CustomerID == "" {
			skipped++
			continue
		}
		if _, exists := cat.Entries[entry.CustomerID]; exists {
			continue // first occurrence wins
		}
		cat.Entries[entry.CustomerID] = entry
	}
	return cat, skipped
}

// catalogFromTable builds the catalog from a conventional header-named
// extract, the dedicated external source. Returns nil when the extract has
// no customer column, which the loader treats as source-unavailable.
func catalogFromTable(table Table) *Catalog {
	headers := table.headerIndex()
	customerIdx, ok := findColumn(headers, []string{fieldCustomer, "customer_id", "client"})
	if !ok {
		return nil
	}

	fieldIdx := map[string]int{}
	for _, field := range catalogFieldOrder {
		if idx, found := findColumn(headers, catalogHeaderAliases(field)); found {
			fieldIdx[field] = idx
		}
	}

	cat := &Catalog{Source: "external", Entries: map[string]CatalogEntry{}}
	for _, field := range catalogFieldOrder {
		if _, found := fieldIdx[field]; found {
			cat.Fields = append(cat.Fields, field)
		}
	}

	for _, row := range table.Rows {
		customer := getValue(row, customerIdx)
		if customer == "" {
			continue
		}
		if _, exists := cat.Entries[customer]; exists {
			continue
		}
		entry := CatalogEntry{CustomerID: customer}
		for field, idx := range fieldIdx {
			setCatalogField(&entry, field, getValue(row, idx))
		}
		cat.Entries[customer] = entry
	}
	return cat
}

func catalogHeaderAliases(field string) []string {
	switch field {
	case fieldCity:
		return []string{"city", "town"}
	case fieldEmail:
		return []string{"email", "e-mail", "email_address"}
	case fieldCountry:
		return []string{"country"}
	case fieldRegion:
		return []string{"region", "province", "state"}
	case fieldPhone:
		return []string{"phone", "telephone", "phone_number"}
	default:
		return []string{field}
	}
}

func mappedFields(mapping []CatalogColumn) []string {
	present := map[string]bool{}
	for _, column := range mapping {
		present[column.Field] = true
	}
	fields := make([]string, 0, len(catalogFieldOrder))
	for _, field := range catalogFieldOrder {
		if present[field] {
			fields = append(fields, field)
		}
	}
	return fields
}

func setCatalogField(entry *CatalogEntry, field string, value string) {
	switch field {
	case fieldCustomer:
		entry.CustomerID = value
	case fieldCity:
		entry.City = value
	case fieldEmail:
		entry.Email = value
	case fieldCountry:
		entry.Country = value
	case fieldRegion:
		entry.Region = value
	case fieldPhone:
		entry.Phone = value
	}
}
