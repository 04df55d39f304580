// Package formbind maps editor rows to form field names and decodes a posted
// form back into the editor.
//
// Every row posts its controls as key[rowID][control], list items as
// key[rowID][group][] and its stored record as key[rowID][__data]. Row order
// is carried by repeated key[__rows] values, one per rendered row, preceded
// by an empty sentinel so an editor whose rows were all removed still posts
// the field. Submit buttons named key[__add], key[__add_item],
// key[__remove], and key[__change] request an editing action instead of a
// final submission.
package formbind
