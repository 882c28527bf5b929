package tztail

// Embed the IANA database so zone names resolve on hosts without zoneinfo.
import _ "time/tzdata"
