package crosslock

// Version is the free-text protocol version exposed by the version
// query. There is no schema versioning beyond this string.
const Version = "1.0.0"
