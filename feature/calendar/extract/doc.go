// Package extract feeds candidate events into the reconciliation engine.
//
// The engine treats extraction as a black box behind the Extractor
// interface. The shipped implementation reads batches that the external
// scraping process drops into object storage, one JSON array per venue
// under candidates/<slug>.json. The month context parameter exists for
// implementations that condition extraction on the current calendar; the
// storage implementation ignores it.
package extract
