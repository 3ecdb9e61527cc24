package httpkit

import "net/http"

// headerWriter keeps headers and drops everything else
type headerWriter http.Header

func (h headerWriter) Header() http.Header       { return http.Header(h) }
func (headerWriter) Write(b []byte) (int, error) { return len(b), nil }
func (headerWriter) WriteHeader(int)             {}

// Headers lets a return style handler call APIs that write headers, such as cookie stores
// only headers reach resp; a status or body written to w is dropped
func Headers(resp Response, write func(w http.ResponseWriter) error) (Response, error) {
	h := http.Header{}
	if err := write(headerWriter(h)); err != nil {
		return Response{}, err
	}
	if resp.Header == nil {
		resp.Header = h
		return resp, nil
	}
	for k, vv := range h {
		resp.Header[k] = append(resp.Header[k], vv...)
	}
	return resp, nil
}
