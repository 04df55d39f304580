// Package subthemes provides the read-only theme to subtheme lookup used by
// the theme editor. Each theme lists a tree of subthemes; the tree is
// flattened in document order and every entry remembers its depth so option
// labels can be indented with one dash per level.
//
// Tables are loaded from YAML or JSON documents:
//
//	themes:
//	  - id: AGRI
//	    label: Agriculture, fisheries, forestry and food
//	    labels: {it: "Agricoltura, pesca, silvicoltura e prodotti alimentari"}
//	    subthemes:
//	      - uri: http://eurovoc.europa.eu/100231
//	        label: agricultural policy
//	        children:
//	          - uri: http://eurovoc.europa.eu/100232
//	            label: agricultural structures and production
//
// A Table is immutable once built and safe for concurrent readers.
package subthemes
