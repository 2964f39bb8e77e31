package stablecoin

// CurrencyPrecision is the number of decimal places kept for stablecoin amounts
const CurrencyPrecision = 2
