package gateway

//go:generate templ generate -f status.templ

type statusInfo struct {
	Upstream string
	Routes   []route
}
