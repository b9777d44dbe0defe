// Package bondyield attributes the daily profit of a fixed-income book and
// computes its annualized yield on capital occupied.
//
// The core functionalities include:
//   - Position Timelines: a continuous daily position series per instrument,
//     built from sparse position records over a padded window.
//   - Interest Accrual: the interest of each day, from the coupon period
//     schedule of each instrument.
//   - Valuation: the mark price of each day, carried forward from the latest
//     valuation or defaulted to par.
//   - Capital Gains: gains realized by secondary market sales, against the
//     prior-day cost price.
//   - Attribution and Yield: the interest, capital gain and mark-to-market of
//     every instrument and day, accumulated over a range and rolled up by
//     instrument, market, issuer or class.
//
// Records come from a [Source]: see the store/memory, store/jsonl and
// store/postgres packages. The renderer package formats reports as markdown
// for the `fia` command-line tool.
package bondyield
