package orders

const (
	TopicOrderSubmitted = "storefront.order.submitted"
	TopicCatalogChanged = "storefront.catalog.changed"
)

// Partition key = order_id (or product_id) so events for one entity keep
// their order.
func PartitionKey(id string) []byte { return []byte(id) }
