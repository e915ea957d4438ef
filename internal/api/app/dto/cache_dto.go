package dto

// CacheSetRequest содержит данные для сохранения значения в кэше.
type CacheSetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	TTL   *int   `json:"ttl"`
}

// CacheSetResponse содержит результат операции сохранения.
type CacheSetResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
	Message string `json:"message"`
	TTL     *int   `json:"ttl"`
}

// CacheGetResponse содержит результат чтения значения из кэша.
// Value равен null, если ключ отсутствует.
type CacheGetResponse struct {
	Key    string  `json:"key"`
	Value  *string `json:"value"`
	Exists bool    `json:"exists"`
}

// CacheDeleteResponse содержит результат удаления ключа.
type CacheDeleteResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

// CacheKeysResponse содержит список ключей по шаблону.
type CacheKeysResponse struct {
	Pattern string   `json:"pattern"`
	Count   int      `json:"count"`
	Keys    []string `json:"keys"`
}
