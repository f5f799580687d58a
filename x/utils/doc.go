/*
Package utils provides decorators shared by all applications: logging, panic
recovery, savepoints, action tags and transaction metrics.
*/
package utils
