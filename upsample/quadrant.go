package upsample

// ChildQuadrant derives which half of the parent's UV space survives the
// 0.5 threshold clip for child tile (x, y) (§4.B.2 step 2). x%2 != 0
// selects the east/"above" half in u, y%2 != 0 selects the north/"above"
// half in v.
func ChildQuadrant(x, y uint32) (keepAboveU, keepAboveV bool) {
	return x%2 != 0, y%2 != 0
}
