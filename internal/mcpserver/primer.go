package mcpserver

// CalendarPrimer describes the Mauvelian calendar and the date forms
// that LLM consumers should use when calling the tools.
const CalendarPrimer = `# Mauvelian Calendar Primer

The Mauvelian calendar is a fictional civil calendar. Every year has
exactly 365 days. There are no leap years and no intercalary days.

## Seasons

Each year is divided into four seasons:

| Season   | Days of the year | Length |
|----------|------------------|--------|
| Zephyr   | 1 - 90           | 90     |
| Phoenix  | 91 - 180         | 90     |
| Scion    | 181 - 270        | 90     |
| Colossus | 271 - 365        | 95     |

## Eras

Years count away from the epoch in both directions: 1AE, 2AE, ... going
forward and 1BE, 2BE, ... going back. There is no year zero; 1BE is
immediately followed by 1AE.

## Date forms

Tools that take a Mauvelian date accept these forms:

1. ` + "`" + `<year> <day-of-year>` + "`" + ` - e.g. ` + "`" + `1306 256` + "`" + ` for the 256th day of 1306AE.
2. ` + "`" + `<year> <day-of-season> <season>` + "`" + ` - e.g. ` + "`" + `1306 76 Scion` + "`" + ` (the same day).

Rules:

- The year may carry an era suffix: ` + "`" + `1306AE` + "`" + ` or ` + "`" + `12BE` + "`" + `. A bare negative
  year (` + "`" + `-12` + "`" + `) also means before-epoch. Do not combine a minus sign with
  the BE suffix.
- Season names are matched case-insensitively and tolerate unambiguous
  prefixes and small misspellings (` + "`" + `col` + "`" + `, ` + "`" + `Colosus` + "`" + `).
- Day of year runs 1..365; day of season runs 1..90 (1..95 in Colossus).

Real calendar days always use ISO form ` + "`" + `YYYY-MM-DD` + "`" + `.

## Reference pair

Conversion between the two calendars is anchored by a stored reference
pair: one real day and the Mauvelian date it corresponds to. The
` + "`" + `convert_to_mauvelian` + "`" + `, ` + "`" + `convert_to_real` + "`" + ` and ` + "`" + `mauvelian_today` + "`" + ` tools fail
until the server is configured with one. ` + "`" + `days_between` + "`" + ` and
` + "`" + `describe_date` + "`" + ` work without it.

## Distances

` + "`" + `days_between` + "`" + ` returns the absolute number of days between two Mauvelian
dates, so the order of the arguments does not matter.

## Almanac

Named events live in the almanac and are listed in calendar order. Event
names are unique; pass ` + "`" + `replace: true` + "`" + ` to ` + "`" + `save_event` + "`" + ` to overwrite.
`
