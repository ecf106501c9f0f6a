package common

// Date is the days-since-epoch representation the aggregate hash table
// arithmetic operates on: a plain signed 32-bit ordinal, not a calendar
// struct. This mirrors the physical date type the source engine sums,
// divides and compares directly as an integer in its AVG/MIN/MAX paths.
type Date int32
