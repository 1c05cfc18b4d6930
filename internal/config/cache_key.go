package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ApprovedClassesKey returns the cache key for the public approved-class listing.
func (r *CacheKeyStruct) ApprovedClassesKey() string {
	return "classes:approved"
}

// ClassEventsChannel returns the pub/sub channel for class lifecycle events.
func (r *CacheKeyStruct) ClassEventsChannel() string {
	return "classes:events"
}

var CacheKey = NewCacheKeyStruct()
