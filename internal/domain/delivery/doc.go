/*
Package delivery implements conditional image delivery.

Images are served with weak validators derived from file metadata only,
never from content hashes:

	ETag:          W/"<mtime in ns>-<size in bytes>"
	Last-Modified: mtime in HTTP date format (GMT, second resolution)
	Cache-Control: public, max-age=31536000

# Decision Rule

 1. If-None-Match equal (after trimming) to the ETag: 304
 2. Else If-Modified-Since parseable and mtime <= date: 304
 3. Else 200 with Content-Type, Content-Length and the body (no body for HEAD)

304 responses still carry all three cache headers. An unparseable
If-Modified-Since is ignored.

# Usage

	result, err := delivery.Serve(c.Writer, c.Request, path, c.Request.Method != http.MethodHead)
	if errors.Is(err, delivery.ErrStat) {
	    // 500
	}
*/
package delivery
