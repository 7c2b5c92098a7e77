// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package saga

// Topic names the broker channels of the saga. The catalog is fixed: one
// success and one fail channel per participant step, an entry channel, the
// orchestrator's inbound channel, two terminal channels, and the ending
// notification channel.
type Topic string

const (
	// TopicStartSaga is where new saga attempts enter the system.
	TopicStartSaga Topic = "start-saga"

	// TopicOrchestrator receives every participant outcome.
	TopicOrchestrator Topic = "orchestrator"

	// TopicProductValidationSuccess carries forward work for the product
	// validation participant; TopicProductValidationFail carries its
	// compensation signal.
	TopicProductValidationSuccess Topic = "product-validation-success"
	TopicProductValidationFail    Topic = "product-validation-fail"

	// TopicInventorySuccess / TopicInventoryFail are the inventory
	// participant's forward and compensation channels.
	TopicInventorySuccess Topic = "inventory-success"
	TopicInventoryFail    Topic = "inventory-fail"

	// TopicPaymentSuccess / TopicPaymentFail are the payment participant's
	// forward and compensation channels.
	TopicPaymentSuccess Topic = "payment-success"
	TopicPaymentFail    Topic = "payment-fail"

	// TopicFinishSuccess and TopicFinishFail are the terminal channels; an
	// envelope published there has reached end-of-life.
	TopicFinishSuccess Topic = "finish-success"
	TopicFinishFail    Topic = "finish-fail"

	// TopicNotifyEnding informs the order service of the terminal outcome.
	TopicNotifyEnding Topic = "notify-ending"
)

// String returns the topic name.
func (t Topic) String() string {
	return string(t)
}

// AllTopics returns the complete topic catalog, used for broker
// provisioning and exhaustive routing tests.
func AllTopics() []Topic {
	return []Topic{
		TopicStartSaga,
		TopicOrchestrator,
		TopicProductValidationSuccess,
		TopicProductValidationFail,
		TopicInventorySuccess,
		TopicInventoryFail,
		TopicPaymentSuccess,
		TopicPaymentFail,
		TopicFinishSuccess,
		TopicFinishFail,
		TopicNotifyEnding,
	}
}
