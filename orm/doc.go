/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called buckets.

* Each bucket contains only one type of model.
* Models are stored under their primary key, which is either provided by the
  caller or taken from the bucket id sequence.
* A bucket may possess secondary indexes (1:1 or 1:N). Indexes are kept up to
  date on every write.
* Buckets and indexes can be registered with the query router.

All models are serialized with the codec package.
*/
package orm
