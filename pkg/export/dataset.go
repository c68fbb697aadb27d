package export

// Dataset defines tabular export content. Rows carry cells in header order;
// column order is a compatibility contract for downstream consumers.
type Dataset struct {
	Headers []string
	Rows    [][]string
}
