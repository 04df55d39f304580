// Package places provides GeoNames place lookup for form inputs: canonical
// URL normalization, an offline gazetteer backed by an embedded place list,
// the widget state used by row editors, and a small net/http handler that
// returns JSON options.
//
// No outbound requests are made. The handler answers GET and HEAD requests
// with q (search), id (resolve) and limit parameters. The default data is
// loaded from data/places.tsv.
package places
