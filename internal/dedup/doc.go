// Package dedup removes feed items already seen under any of three
// identity keys: the item id (exact match), the title (Unicode case
// folded), and the alternate-link URI.
//
// An item survives only if it is novel on all three dimensions. The
// pass is streaming: each item is examined, decided, and possibly
// yielded before the next one is pulled, and the identity sets live
// exactly as long as one run.
package dedup
