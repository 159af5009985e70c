package department

// Department は部署の参照データです。
type Department struct {
	ID   int64
	Name string
}
