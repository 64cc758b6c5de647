package elasticsearch

// DefaultIndexName is the default Elasticsearch index used for product documents.
const DefaultIndexName = "products"

// buildIndexMapping returns the full JSON settings and mapping for the
// products index: a standard analyzer with English stop words, exact-match
// keyword fields for filtering and faceting, a category-scoped completion
// field for autocomplete, and a dense_vector field reserved for future
// semantic search.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "standard_analyzer": {
          "type": "standard",
          "stopwords": "_english_"
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "id":          { "type": "keyword" },
      "title":       { "type": "text", "analyzer": "standard_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "description": { "type": "text", "analyzer": "standard_analyzer" },
      "category":    { "type": "keyword" },
      "brand":       { "type": "keyword" },
      "sku":         { "type": "keyword" },
      "price":       { "type": "double" },
      "attributes":  { "type": "object", "enabled": false },
      "tags":        { "type": "keyword" },
      "createdAt":   { "type": "date" },
      "suggest":     { "type": "completion", "contexts": [ { "name": "category", "type": "category", "path": "category" } ] },
      "embedding":   { "type": "dense_vector", "dims": 768, "index": false }
    }
  }
}`
}
