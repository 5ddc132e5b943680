package kinematics

import "errors"

var ErrInvalidChamber = errors.New("kinematics: invalid chamber dimensions")
